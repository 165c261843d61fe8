package dataset

// MiB is the size unit for generated data files.
const MiB = 1024 * 1024
