package ham

// Version is the library and CLI version. Release builds override it with
// -ldflags "-X github.com/aretw0/ham.Version=...".
var Version = "0.1.0"
