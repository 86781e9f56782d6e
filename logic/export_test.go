package logic

import "golang.org/x/crypto/bcrypt"

func init() {
	// Keeps node seeding fast
	bcryptCost = bcrypt.MinCost
}
