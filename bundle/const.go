package bundle

// packageName is used for debug and error messages
const packageName = "bundle"

// magic identifies the bundle file format.
var magic = []byte("HPCB1")

// flagCrypt marks an encrypted payload.
const flagCrypt byte = 1 << 0
