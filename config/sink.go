package config

// Sink is a publishing target: a local directory when Directory is set,
// an S3 bucket otherwise.
type Sink struct {
	Name           string
	Directory      string
	Prefix         string
	Bucket         string
	Region         string
	AccessKey      string
	SecretKey      string
	Endpoint       string
	ForcePathStyle bool
	Token          string
	RoleArn        string
}

func (s *Sink) IsLocal() bool {
	return s.Directory != ""
}
