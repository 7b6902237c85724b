// File: musicminds/handlers/bundle.go
package handlers

import (
	"musicminds/services/listing"
	"musicminds/services/session"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	SessionStore session.Store
	Resources    []listing.Resource

	Auth          *AuthHandler
	Resource      *ResourceHandler
	Export        *ExportHandler
	Download      *DownloadHandler
	Notifications *NotificationHandler
	Session       *SessionHandler
}
