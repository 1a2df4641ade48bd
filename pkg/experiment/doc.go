/*
Package experiment runs a trusted control computation alongside an
experimental candidate, compares their outputs, and always lets an explicit
policy decide the returned value. It is the core primitive for migrating a
call site from an old implementation to a new one without letting the new
code affect production behavior.

# Overview

A run always evaluates the control computation. A rollout strategy decides,
once per run, whether the experimental computation also runs; when it does,
both execute concurrently. Equal outputs return the control value silently.
A disagreement, or any failure of the experimental path, is packaged as a
[Mismatch] and handed to the caller's resolver, whose return value becomes
the run's result. A control failure always fails the run; an experimental
failure never does.

	value, err := experiment.New[int]("pricing-v2").
		Control(oldPrice).
		Experimental(newPrice).
		Rollout(0.05).
		OnMismatch(experiment.AlwaysControl[int]).
		Run(ctx)

# Thread Safety

An Experiment must not be mutated once a run begins. Distinct runs share no
state; the default randomness source is safe for concurrent use.
*/
package experiment
