// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// UserAgent identifies ls-astro to remote name resolvers.
const UserAgent = "ls-astro/" + Version

// Milestones:
// 0.3.0 - Name resolution, rise/set and twilight times, live track view
// 0.2.0 - B1950 and Galactic frames, refraction, site catalogue files
// 0.1.0 - Initial release: angles, sidereal time, J2000/AzEl conversion
