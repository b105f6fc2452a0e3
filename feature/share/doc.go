// Package share turns a party's logs into a compact URL-safe string so a settlement can
// be reproduced elsewhere.
//
// A share string is one algorithm tag byte followed by the compressed JSON tuple
// [partyLog, [[name, log], ...]], base64 raw-URL encoded. zstd and brotli payloads are
// both accepted on decode.
//
// Routes:
//
//	POST /share           store a state under a short code
//	GET  /share/:code     resolve a short code
//	POST /share/decode    decode a share string
//	POST /share/settle    decode a share string and settle it
package share
