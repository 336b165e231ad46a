// Package dav mounts the games directory as a WebDAV share under
// /dav.
//
// The protocol implementation is golang.org/x/net/webdav; this
// feature only supplies it the root directory and an authorization
// predicate computed from the configured credentials. When no
// credentials are configured the share is open.
package dav
