package server

// Config holds configuration for the HTTP server and its WebDAV
// surface.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
	// WebDAVEnabled mounts the /dav tree when true.
	WebDAVEnabled bool `mapstructure:"webdav_enabled" default:"true"`
	// WebDAVUsername enables basic auth on /dav when set together
	// with WebDAVPassword.
	WebDAVUsername string `mapstructure:"webdav_username" default:""`
	// WebDAVPassword is the basic auth password for /dav.
	WebDAVPassword string `mapstructure:"webdav_password" default:""`
}

// WebDAVAuthRequired reports whether /dav requests must carry
// credentials.
func (c Config) WebDAVAuthRequired() bool {
	return c.WebDAVUsername != "" && c.WebDAVPassword != ""
}
