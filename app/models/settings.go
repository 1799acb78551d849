package models

import "time"

// Setting is a keyed configuration document. Public settings are readable
// without authentication and cached in Redis.
type Setting struct {
	Key         string      `bson:"_id"                   json:"key"`
	Value       interface{} `bson:"value"                 json:"value"`
	Type        string      `bson:"type"                  json:"type"` // string | number | boolean | object | array
	Category    string      `bson:"category"              json:"category"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	IsPublic    bool        `bson:"isPublic"              json:"isPublic"`
	IsEditable  bool        `bson:"isEditable"            json:"isEditable"`
	UpdatedAt   time.Time   `bson:"updatedAt"             json:"updatedAt"`
}
