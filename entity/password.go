package entity

import "time"

type PasswordReset struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Token     string    `bson:"token"`
	TTL       time.Time `bson:"ttl"`
	CreatedAt time.Time `bson:"created_at"`
}

type CredentialEventKind string

const (
	CredentialCreated CredentialEventKind = "created"
	CredentialChanged CredentialEventKind = "changed"
	CredentialReset   CredentialEventKind = "reset"
	CredentialDeleted CredentialEventKind = "deleted"
)

// CredentialEvent records that a credential changed. It never holds the secret.
type CredentialEvent struct {
	ID      string              `bson:"_id" json:"id"`
	UserID  string              `bson:"user_id" json:"userId"`
	ActorID string              `bson:"actor_id,omitempty" json:"actorId,omitempty"`
	Kind    CredentialEventKind `bson:"kind" json:"kind"`
	At      time.Time           `bson:"at" json:"at"`
}
