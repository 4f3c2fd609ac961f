// Package lectern is the composition root of the Lectern presentation engine.
//
// A presentation is a YAML (or JSON) document describing a tree of slides.
// Every slide is rendered by exactly one master, a named content variant with
// a field contract and hooks. Loading a presentation happens in two phases:
//
//  1. Open parses the document, normalizes the fields of every slide and
//     collects the media URIs the slides reference.
//  2. Load additionally resolves that media, by default against the sidecar
//     files (<asset>.yml) below the project root, and finalizes every slide
//     with the resolved metadata.
//
// Usage:
//
//	p, err := lectern.Load(ctx, "lessons/baroque.lectern.yml",
//		lectern.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	for _, s := range p.Slides.Flat {
//		fmt.Println(s.No, s.Title())
//	}
package lectern
