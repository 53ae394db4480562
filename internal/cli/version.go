package cli

import (
	"fmt"
	"runtime/debug"
)

const unknownVersion = "unknown"

type Version struct {
	AppName   string
	Version   string
	Revision  string
	BuildDate string
}

// NewVersion fills unset fields from the embedded build info when the binary
// was installed with `go install` instead of the release pipeline.
func NewVersion(appName, version, revision, buildDate string) Version {
	v := Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	}
	if v.Version != unknownVersion && v.Version != "" {
		return v
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" {
			v.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				v.Revision = setting.Value
			case "vcs.time":
				v.BuildDate = setting.Value
			}
		}
	}
	if v.Version == "" {
		v.Version = unknownVersion
	}
	return v
}

func (v Version) Print() string {
	if v.Revision == "" {
		return fmt.Sprintf("%s %s\n", v.AppName, v.Version)
	}
	return fmt.Sprintf("%s %s (%s) built at %s\n", v.AppName, v.Version, v.Revision, v.BuildDate)
}
