package models

import (
	"time"
)

type UserRole string

const (
	RoleRegular UserRole = "USUARIO"
	RoleCreator UserRole = "CUENTERO"
	RoleAdmin   UserRole = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleRegular, RoleCreator, RoleAdmin:
		return true
	}
	return false
}

// IsCreatorClass is true for roles allowed to publish content.
func (r UserRole) IsCreatorClass() bool {
	return r == RoleCreator || r == RoleAdmin
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	Email     string     `json:"correo" gorm:"uniqueIndex;not null;size:254"`
	Password  string     `json:"-" gorm:"not null"`
	FirstName string     `json:"nombres" gorm:"not null;size:100"`
	LastName  string     `json:"apellidos" gorm:"not null;size:100"`
	Phone     string     `json:"telefono" gorm:"size:20"`
	City      string     `json:"ciudad" gorm:"size:100"`
	Role      UserRole   `json:"rol" gorm:"size:10;index;not null"`
	AvatarURL string     `json:"avatar"`
	Interests []string   `json:"gustos" gorm:"serializer:json"`
	IsActive  bool       `json:"is_active" gorm:"not null"`
	LastLogin *time.Time `json:"last_login"`
	JoinedAt  time.Time  `json:"fecha_union" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"-"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsCreatorClass is computed from the stored role on every call.
func (u *User) IsCreatorClass() bool {
	return u.Role.IsCreatorClass()
}

func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

// OwnerID makes a user its own owner for profile edits.
func (u *User) OwnerID() *uint { return &u.ID }

// PublicUser is the minimal author view embedded in news and interviews.
type PublicUser struct {
	ID       uint     `json:"id"`
	FullName string   `json:"nombre_completo"`
	Role     UserRole `json:"rol"`
	Avatar   string   `json:"avatar"`
	City     string   `json:"ciudad"`
}

func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:       u.ID,
		FullName: u.FullName(),
		Role:     u.Role,
		Avatar:   u.AvatarURL,
		City:     u.City,
	}
}

// Profile is the full self view of a user.
type Profile struct {
	ID             uint       `json:"id"`
	Email          string     `json:"correo"`
	FirstName      string     `json:"nombres"`
	LastName       string     `json:"apellidos"`
	Phone          string     `json:"telefono"`
	City           string     `json:"ciudad"`
	Avatar         string     `json:"avatar"`
	Interests      []string   `json:"gustos"`
	Role           UserRole   `json:"rol"`
	FullName       string     `json:"nombre_completo"`
	IsCreatorClass bool       `json:"es_cuentero"`
	IsActive       bool       `json:"is_active"`
	JoinedAt       time.Time  `json:"fecha_union"`
	LastLogin      *time.Time `json:"last_login"`
}

func (u *User) Profile() Profile {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return Profile{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		City:           u.City,
		Avatar:         u.AvatarURL,
		Interests:      interests,
		Role:           u.Role,
		FullName:       u.FullName(),
		IsCreatorClass: u.IsCreatorClass(),
		IsActive:       u.IsActive,
		JoinedAt:       u.JoinedAt,
		LastLogin:      u.LastLogin,
	}
}
