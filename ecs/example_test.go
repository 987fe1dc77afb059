package ecs_test

import (
	"fmt"

	"github.com/phanxgames/buckets"
	"github.com/phanxgames/buckets/ecs"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func ExampleNewDonburiSink() {
	world := donburi.NewWorld()
	sink := ecs.NewDonburiSink(world)

	ecs.PickerEventType.Subscribe(world, func(w donburi.World, e buckets.PickerEvent) {
		fmt.Println("event:", e.Type)
	})

	tun := buckets.DefaultTuning()
	tun.OpenDuration = 0
	p := buckets.NewPicker(tun, nil)
	p.SetEventSink(sink)
	p.SetCategories([]buckets.CategoryRef{{ID: buckets.NewCategoryID()}})

	p.Open(buckets.NewTaskID(), buckets.Rect{X: 100, Y: 100, Width: 20, Height: 20})
	fmt.Println("open:", sink.Session().Open)
	p.Cancel()

	events.ProcessAllEvents(world)
	fmt.Println("cancels:", sink.Session().Cancels)
	// Output:
	// open: true
	// event: opened
	// event: cancelled
	// cancels: 1
}
