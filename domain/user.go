package domain

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username     string              `bson:"username" json:"username"`
	Password     string              `bson:"password" json:"-"`
	Fname        string              `bson:"fname" json:"fname"`
	Lname        string              `bson:"lname,omitempty" json:"lname"`
	Email        string              `bson:"email" json:"email"`
	Role         Role                `bson:"role" json:"role"`
	TeamId       *primitive.ObjectID `bson:"teamId,omitempty" json:"teamId,omitempty"`
	ResetToken   string              `bson:"resetToken,omitempty" json:"-"`
	ResetExpires time.Time           `bson:"resetExpires,omitempty" json:"-"`
}

type Users []*User

func (u *Users) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(u)
}

func (u *User) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(u)
}

func (u *User) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(u)
}

func (u User) Equals(user User) bool {
	return u.Id == user.Id
}

type UserRepository interface {
	GetAll() (Users, error)
	GetById(id string) (*User, error)
	GetByUsername(username string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByResetToken(token string) (*User, error)
	Insert(user User) (User, error)
	Update(user User) error
	Delete(id string) error
}

// Role values match what the backend stores and what clients persist locally.
type Role string

const (
	USER    Role = "User"
	MANAGER Role = "Manager"
	ADMIN   Role = "Admin"
)

func (r Role) String() string {
	return string(r)
}

func RoleFromString(s string) (Role, error) {
	switch s {
	case "User":
		return USER, nil
	case "Manager":
		return MANAGER, nil
	case "Admin":
		return ADMIN, nil
	default:
		return "", errors.New("invalid role")
	}
}
