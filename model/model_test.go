package model

import "github.com/conduit-labs/conduit/auth/password"

func credFixture() password.Credential {
	return password.Credential{Salt: "aa", Hash: "bb"}
}
