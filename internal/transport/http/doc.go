// Package http contains the chi HTTP handlers: the read-only query and
// export surface, the credential-gated administrative surface for
// uploading and deleting workbooks, and the liveness endpoint.
package http
