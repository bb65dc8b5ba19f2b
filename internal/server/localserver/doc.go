// Package localserver serves the emulated device over a Unix domain socket.
//
// The protocol is line oriented: one command per line, one reply line per
// command.
//
//	PING              -> PONG
//	RESOLVE <hex>     -> OK <8 hex digits> | MISS | ERR <code> <message>
//	INFO              -> OK serial=<hex> algorithm=<hex> entries=<n>
//	QUIT              -> BYE, then the connection is closed
//
// Commands are case-insensitive. Anything else is answered with
// ERR MD-ARG-1001. Each connection gets its own rate limiter and a ULID
// that tags its log lines. Access control is left to the socket file's
// permissions.
package localserver
