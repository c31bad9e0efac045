package models

import (
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/google/uuid"
)

// Role is a named access tier (customer, admin, driver).
type Role struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      enums.UserRole `gorm:"column:name;not null;uniqueIndex:ux_roles_name"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}
