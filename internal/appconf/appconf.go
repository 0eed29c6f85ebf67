package appconf

// Environment identifies the operating environment of the application.
type Environment int

const (
	Test Environment = iota
	Development
	Production
)

// EnvFlagToEnvironment converts an environment flag value ("test",
// "development", "production") to an Environment.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}
