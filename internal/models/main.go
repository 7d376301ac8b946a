package models

// ModelRegistry lists every model that participates in gorm auto-migration.
// Production deployments use the SQL files under migrations/ instead.
var ModelRegistry = []interface{}{
	&User{},
	&WaitlistRegistration{},
}
