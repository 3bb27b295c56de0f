package mongostore_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"attendance-backend/store"
	"attendance-backend/store/mongostore"
	"attendance-backend/store/storetest"
)

const database = "attendance_test"

// These specs need a replica set, e.g.
// MONGO_URI=mongodb://localhost:27017/?replicaSet=rs0
var _ = Describe("Store", func() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		It("needs MONGO_URI", func() {
			Skip("MONGO_URI not set")
		})
		return
	}

	var client *mongo.Client

	BeforeEach(func() {
		var err error
		client, err = mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		Expect(client.Disconnect(context.Background())).To(Succeed())
	})

	storetest.Contract(func() store.Store {
		ctx := context.Background()
		db := client.Database(database)
		for _, name := range mongostore.Collections {
			_, err := db.Collection(name).DeleteMany(ctx, bson.M{})
			Expect(err).To(BeNil())
		}

		s := mongostore.New(client, database)
		Expect(s.EnsureIndexes(ctx)).To(Succeed())
		return s
	})

	Specify("ping", func() {
		Expect(mongostore.New(client, database).Ping(context.Background())).To(Succeed())
	})
})
