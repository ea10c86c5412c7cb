// Package config loads the frontdesk runtime configuration from the
// environment, optionally seeded from a .env file.
//
// Three concerns are configured here: the clinic calendar (service
// account credentials, calendar ID, timezone), the clinic schedule
// (working hours and slot length) and the Redis profile store. The
// calendar and Redis sections may be left empty; the server then runs
// with the corresponding feature degraded rather than refusing to
// start.
package config
