// Package scaffold produces a new project directory from the starter
// repository. Scaffolder runs a fixed sequence of steps: guard the target
// path, shallow-clone the starter, drop its history, prune the template
// variants that were not selected, commit the result to a fresh repository,
// then install dependencies and look for the local-network helper.
//
// Required steps stop the run and return a *StepError. Optional steps report
// their failure and let the run continue. Nothing in this package exits the
// process.
package scaffold
