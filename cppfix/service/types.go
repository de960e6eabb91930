package service

type PatchInput struct {
	Path string `json:"path,omitempty" description:"C++ source file path or afs URL; defaults to src/GeodesicLine3.cpp"`
}

type PatchOutput struct {
	Path          string     `json:"path"`
	Changed       bool       `json:"changed"`
	Includes      int        `json:"includes"`
	Prints        int        `json:"prints"`
	Continuations int        `json:"continuations"`
	NoOps         int        `json:"noOps"`
	LinesBefore   int        `json:"linesBefore"`
	LinesAfter    int        `json:"linesAfter"`
	Git           *GitStatus `json:"git,omitempty"`
}

type PreviewOutput struct {
	PatchOutput
	Diff      string `json:"diff,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

// GitStatus describes the target's worktree state before patching.
type GitStatus struct {
	Root     string `json:"root"`
	File     string `json:"file"`
	Tracked  bool   `json:"tracked"`
	Modified bool   `json:"modified"`
}
