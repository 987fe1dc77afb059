// Package ecs provides ECS adapters for the buckets picker.
//
// [NewDonburiSink] bridges picker events into a [Donburi] world. Each event
// is published on [PickerEventType] for systems that subscribe, and the sink's
// entity carries a [Session] component mirroring the open session and commit
// counts for systems that query instead.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	picker.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
