// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

/*
Package supervisor runs the recommendation server's long-lived services under
a suture supervisor tree.

	revets (root)
	├── maintenance-layer
	│   └── cache-janitor
	└── api-layer
	    └── http-server

Failed services are restarted with suture's backoff. Supervisor events
(restarts, backoff, timeouts) are logged through sutureslog, whose slog
handler is the zerolog-backed adapter from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMaintenanceService(cache.NewJanitor(respCache, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
