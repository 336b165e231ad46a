package server_test

import (
	"testing"

	"switchshop/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_WebDAVAuthRequired(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"BothSet", "admin", "secret", true},
		{"OnlyUsername", "admin", "", false},
		{"OnlyPassword", "", "secret", false},
		{"NeitherSet", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{
				WebDAVUsername: tt.username,
				WebDAVPassword: tt.password,
			}
			assert.Equal(t, tt.want, c.WebDAVAuthRequired())
		})
	}
}
