package dto

type CredentialsInput struct {
	Email    string
	Password string
}

type SignInInput struct {
	Email    string
	Password string
}

type SignInOutput struct {
	Edition int
	Known   bool
}

type PluginListOutput struct {
	Plugins []string
}
