package config

// Version is the current Reyna version.
var Version = "0.2.0"

const SourceFileExt = ".reyna"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".reyna"}

// TrimSourceExt removes the recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates if the program is running in test mode.
var IsTestMode = false

// GC tuning. GCInitialThreshold is the accounted heap size (the VM's GC counts
// 64 units per tracked object) above which the first collection runs; after
// each collection the threshold is set to GCGrowthFactor times the size that
// survived.
const (
	GCInitialThreshold = 1024
	GCGrowthFactor     = 2.0
)

// Stack and frame sizing, mirrored from the VM's own constants for use by
// embedding hosts that want to pre-size buffers.
const (
	InitialStackSize = 2048
	InitialFrameSize = 256
	MaxFrameCount    = 4096
)
