// Package event is an in-process event dispatcher. A Dispatcher is an
// ordinary value: construct one, pass it to the code that needs it, and
// close it on shutdown.
//
//	d := event.NewDispatcher(event.WithLogger(log))
//	defer d.Close()
//
//	d.Listen("user.*", event.Func(func(ctx context.Context, e event.Event) error {
//		return audit.Record(ctx, e.Name, e.Payload)
//	}), event.WithPriority(10))
//
//	err := d.Dispatch(ctx, "user.created", user)
//
// Patterns use path.Match syntax. Listeners run synchronously in priority
// order; Subscribe adds asynchronous observers that receive every event over
// a buffered channel and are dropped when they fall behind.
package event
