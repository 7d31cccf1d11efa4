/*
Package runner drives a Tendril engine at a fixed frame rate.

The Runner owns the engine on a single goroutine. Other goroutines (a file
watcher, the HTTP or MCP adapters) never touch the engine directly: they
Submit a function, which the loop runs between two frames. A rebuild therefore
never interleaves with a tick.

Each frame is wrapped in a transform scope (Push/Pop on the engine's surface),
so rotations applied by generators last only for that frame.

# Usage

	r := runner.New(runner.WithFPS(60), runner.WithLogger(logger))

	go watchScript(func(data []byte) {
		_ = r.Submit(ctx, func(e *tendril.Engine) error {
			return e.RebuildScript(ctx, data)
		})
	})

	if err := r.Run(ctx, eng); err != nil {
		log.Fatal(err)
	}
*/
package runner
