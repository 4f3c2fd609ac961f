// Package masters defines the closed set of slide content variants.
package masters

import "github.com/aretw0/lectern/pkg/core"

var registry = core.NewRegistry(
	audio,
	camera,
	document,
	editor,
	generic,
	image,
	note,
	question,
	quote,
	sampleList,
	section,
	task,
	video,
	wikipedia,
	youtube,
)

// Registry returns the process-wide master registry.
func Registry() *core.Registry {
	return registry
}

// Get returns the master registered under name.
func Get(name string) (*core.Master, error) {
	return registry.Get(name)
}
