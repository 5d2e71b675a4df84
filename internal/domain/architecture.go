package domain

// ArchitectureType is the coarse layering classification of a project.
type ArchitectureType string

const (
	ArchitectureFullStack     ArchitectureType = "Full-stack"
	ArchitectureFrontend      ArchitectureType = "Frontend"
	ArchitectureBackend       ArchitectureType = "Backend"
	ArchitectureStaticWebsite ArchitectureType = "Static Website"
	ArchitectureUnknown       ArchitectureType = "Unknown"
)

func (a ArchitectureType) String() string { return string(a) }
