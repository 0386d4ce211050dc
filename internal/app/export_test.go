package app

// WithWorkingDir pins the directory the App resolves the workspace and platform paths from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// RelevanceFilter exposes the watch path filter.
var RelevanceFilter = relevanceFilter
