package batch

// packageName is used for debug and error messages
const packageName = "batch"

// SummaryFile is the name of the summary report in the results directory.
const SummaryFile = "summary.txt"

// ManifestFile is the name of the digest manifest in the results directory.
const ManifestFile = "hashes.sha256"
