// Package process reaps the Chrome process tree left behind by a run.
// Chrome forks renderer, GPU and zygote helpers; closing the DevTools
// connection does not always take them down in containers.
package process
