package gen

// packageName is used for debug and error messages
const packageName = "gen"
