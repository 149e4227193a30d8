package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/olharfest/inscricao-backend/pkg/types"
)

// SystemLog is an append-only audit row. Only business, security and error
// level events are persisted here; rows are never updated after creation.
type SystemLog struct {
	ID           string         `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Level        types.LogLevel `gorm:"column:level;type:varchar(32);not null;index" json:"level"`
	Message      string         `gorm:"column:message;type:text;not null" json:"message"`
	Data         datatypes.JSON `gorm:"column:data;type:jsonb" json:"data"`
	FunctionName string         `gorm:"column:function_name;type:varchar(128);index" json:"function_name"`
	UserID       *string        `gorm:"column:user_id;type:varchar(64)" json:"user_id"`
	RequestID    string         `gorm:"column:request_id;type:varchar(128)" json:"request_id"`
	IP           string         `gorm:"column:ip;type:varchar(64)" json:"ip"`
	UserAgent    string         `gorm:"column:user_agent;type:varchar(512)" json:"user_agent"`
	LogTime      time.Time      `gorm:"column:log_time;not null" json:"log_time"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (SystemLog) TableName() string { return "system_log" }

// SecurityLog duplicates security-level events into a separate collection so
// they survive routine system_log retention.
type SecurityLog struct {
	ID           string         `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Message      string         `gorm:"column:message;type:text;not null" json:"message"`
	Data         datatypes.JSON `gorm:"column:data;type:jsonb" json:"data"`
	FunctionName string         `gorm:"column:function_name;type:varchar(128);index" json:"function_name"`
	UserID       *string        `gorm:"column:user_id;type:varchar(64)" json:"user_id"`
	RequestID    string         `gorm:"column:request_id;type:varchar(128)" json:"request_id"`
	IP           string         `gorm:"column:ip;type:varchar(64)" json:"ip"`
	UserAgent    string         `gorm:"column:user_agent;type:varchar(512)" json:"user_agent"`
	LogTime      time.Time      `gorm:"column:log_time;not null" json:"log_time"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (SecurityLog) TableName() string { return "security_log" }
