package domain

import (
	"encoding/json"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Team struct {
	Id          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	LeaderId    *primitive.ObjectID  `bson:"leaderId,omitempty" json:"leaderId,omitempty"`
	Members     []primitive.ObjectID `bson:"members,omitempty" json:"members"`
}

type Teams []*Team

func (t *Teams) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(t)
}

func (t *Team) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(t)
}

func (t *Team) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(t)
}

func (t *Team) HasMember(id primitive.ObjectID) bool {
	for _, m := range t.Members {
		if m == id {
			return true
		}
	}
	return false
}

type TeamRepository interface {
	GetAll() (Teams, error)
	GetById(id string) (*Team, error)
	FindByName(name string) (*Team, error)
	Insert(team Team) (Team, error)
	Update(team Team) error
	Delete(id string) error
}
