package gen

// Version of the oasgen command line tool.
const Version = "v0.3.0"
