package types

// Version is the siteops build version, overridden at link time with
// -ldflags "-X github.com/ltth-app/siteops/pkg/domain/types.Version=..."
var Version = "dev"

// AppName is used in banners and commit messages
const AppName = "siteops"
