// Package oasgen holds the runtime registry that generated docs.go
// files register their documents with, so applications can serve the
// OpenAPI document that was generated at build time.
package oasgen

import (
	"errors"
	"fmt"
	"sync"
)

// Name is the default instance name a generated document registers
// under when no instance name was configured.
const Name = "openapi"

var (
	docsMu sync.RWMutex
	docs   map[string]OpenAPI
)

// OpenAPI is the interface a registered document exposes.
type OpenAPI interface {
	ReadDoc() string
}

// Register makes a document available by name. Generated docs.go files
// call this from their init function.
func Register(name string, doc OpenAPI) {
	docsMu.Lock()
	defer docsMu.Unlock()

	if doc == nil {
		panic("oasgen: Register doc is nil")
	}

	if docs == nil {
		docs = make(map[string]OpenAPI)
	}

	if _, ok := docs[name]; ok {
		panic("oasgen: Register called twice for " + name)
	}

	docs[name] = doc
}

// GetOpenAPI returns the registered document with the given name, or
// nil when nothing registered under it.
func GetOpenAPI(name string) OpenAPI {
	docsMu.RLock()
	defer docsMu.RUnlock()

	return docs[name]
}

// ReadDoc renders a registered document. With no name it reads the
// default instance.
func ReadDoc(optionalName ...string) (string, error) {
	docsMu.RLock()
	defer docsMu.RUnlock()

	if docs == nil {
		return "", errors.New("no documents have been registered")
	}

	name := Name
	if len(optionalName) != 0 && optionalName[0] != "" {
		name = optionalName[0]
	}

	doc, ok := docs[name]
	if !ok {
		return "", fmt.Errorf("no document named %q was registered", name)
	}

	return doc.ReadDoc(), nil
}
