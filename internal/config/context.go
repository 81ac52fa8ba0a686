package config

import (
	billy "github.com/go-git/go-billy/v5"
)

// Context is the runtime state shared by every setting handler for one run.
type Context struct {
	// DstPath is the destination directory on disk and Dst a filesystem
	// rooted at it. Discovery reads only from Dst.
	DstPath string
	Dst     billy.Filesystem

	// WorkPath is the temporary working copy of the template and Work a
	// filesystem rooted at it. Materialization writes only to Work.
	WorkPath string
	Work     billy.Filesystem

	// Preexisting is set when the destination already holds a project
	// produced from this template.
	Preexisting bool
	Interactive bool

	// Version is the template version being installed.
	Version string
}
