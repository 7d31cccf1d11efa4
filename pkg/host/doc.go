/*
Package host defines the collaborators the engine drives but does not own.

Generators draw on a Surface, read time from a Clock, poll a Keyboard and write
diagnostic records to Diagnostics. The host application (terminal renderer,
HTTP server, test harness) supplies the implementations; this package only holds
the contracts plus no-op and system defaults.

All drawing coordinates live in the normalized [-1,1] logical space. Mapping to
real pixels is the Surface's concern.
*/
package host
