package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusPending  = "pending"
	StatusProgress = "progress"
	StatusResolved = "resolved"
	StatusClosed   = "closed"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

const MaxScreenshots = 5

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"unique;not null"          json:"username"`
	FullName     string     `gorm:"not null"                 json:"full_name"`
	Email        string     `gorm:"unique;not null"          json:"email"`
	PasswordHash string     `gorm:"not null"                 json:"-"`
	Role         string     `gorm:"not null;default:'user'"  json:"role"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	IsActive     bool       `gorm:"default:true"             json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Menu struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	IsActive  bool      `gorm:"default:true"             json:"is_active"`
	SubMenus  []SubMenu `gorm:"foreignKey:MenuID"        json:"sub_menus,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubMenu struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MenuID    uint      `gorm:"index;not null"           json:"menu_id"`
	Menu      *Menu     `gorm:"foreignKey:MenuID"        json:"menu,omitempty"`
	Name      string    `gorm:"not null"                 json:"name"`
	IsActive  bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Report struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"         json:"id"`
	UserID      uint       `gorm:"index;not null"                   json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID"                json:"user,omitempty"`
	MenuID      uint       `gorm:"index;not null"                   json:"menu_id"`
	Menu        *Menu      `gorm:"foreignKey:MenuID"                json:"menu,omitempty"`
	SubMenuID   uint       `gorm:"index;not null"                   json:"sub_menu_id"`
	SubMenu     *SubMenu   `gorm:"foreignKey:SubMenuID"             json:"sub_menu,omitempty"`
	Name        string     `gorm:"not null"                         json:"name"`
	Description string     `gorm:"type:text"                        json:"description"`
	Status      string     `gorm:"not null;default:'pending';index" json:"status"`
	Priority    string     `gorm:"not null;default:'medium'"        json:"priority"`
	AssignedTo  *uint      `gorm:"index"                            json:"assigned_to"`
	Assignee    *User      `gorm:"foreignKey:AssignedTo"            json:"assignee,omitempty"`
	Screenshots []string   `gorm:"serializer:json"                  json:"screenshots"`
	CreatedAt   time.Time  `gorm:"index"                            json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type ReportComment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID   uint      `gorm:"index;not null"           json:"report_id"`
	UserID     uint      `gorm:"index;not null"           json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID"        json:"user,omitempty"`
	Comment    string    `gorm:"type:text;not null"       json:"comment"`
	IsInternal bool      `gorm:"default:false"            json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
