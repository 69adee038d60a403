package storage

import "fmt"

// Options selects and configures a storage driver.
type Options struct {
	Driver         string // "local" or "s3"
	LocalDir       string
	LocalURLPrefix string
	S3             S3Config
}

// New returns the Storage implementation named by opts.Driver.
func New(opts Options) (Storage, error) {
	switch opts.Driver {
	case "", "local":
		dir := opts.LocalDir
		if dir == "" {
			dir = "./uploads"
		}
		prefix := opts.LocalURLPrefix
		if prefix == "" {
			prefix = "/uploads"
		}
		return NewLocal(dir, prefix), nil
	case "s3":
		if opts.S3.Bucket == "" || opts.S3.Region == "" || opts.S3.PublicBaseURL == "" {
			return nil, fmt.Errorf("s3 storage requires S3_BUCKET, S3_REGION and S3_PUBLIC_BASE_URL")
		}
		return NewS3(opts.S3), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
