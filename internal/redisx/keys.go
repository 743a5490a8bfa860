package redisx

import "time"

const (
	// Public credential verification: credencial:{uuid} -> public member JSON
	KeyCredentialVerify = "credencial:%s"
)

var (
	TTLCredentialVerify = 5 * time.Minute
)
