// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

//go:build integration

package postgres_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/authd/authd/internal/auth"
	"github.com/authd/authd/internal/auth/postgres"
)

var _ = Describe("Service over PostgreSQL", func() {
	var (
		ctx    context.Context
		svc    *auth.Service
		tokens *auth.JWTService
	)

	BeforeEach(func() {
		ctx = context.Background()
		truncate(ctx)

		hasher, err := auth.NewBcryptHasher(auth.DefaultBcryptCost)
		Expect(err).NotTo(HaveOccurred())
		tokens, err = auth.NewJWTService("authd", []byte("integration-secret"))
		Expect(err).NotTo(HaveOccurred())

		svc, err = auth.NewService(postgres.NewUserRepository(env.pool), hasher, auth.NewUUIDGenerator(), tokens)
		Expect(err).NotTo(HaveOccurred())
	})

	registration := func() auth.RegistrationRequest {
		telephone := "+1 415 237 0800"
		return auth.RegistrationRequest{
			Name:                "John Doe",
			Username:            "john.doe",
			BirthDate:           "1990-01-01",
			GenderID:            1,
			Password:            "123456789",
			PasswordRepetition:  "123456789",
			AddressStreet:       "153 W 57th St",
			AddressNeighborhood: "manhattan",
			AddressCityID:       4,
			AddressPostalCode:   10019,
			Email:               "johndoe@company.com",
			Telephone:           &telephone,
		}
	}

	It("signs in with the credentials it registered", func() {
		registered, err := svc.Register(ctx, registration())
		Expect(err).NotTo(HaveOccurred())
		Expect(registered.ID).To(MatchRegexp(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`))

		username := "john.doe"
		signedIn, err := svc.SignIn(ctx, auth.SignInRequest{Username: &username, Password: "123456789"})
		Expect(err).NotTo(HaveOccurred())
		Expect(signedIn.ID).To(Equal(registered.ID))
		Expect(signedIn.Username).To(Equal("john.doe"))
		Expect(signedIn.Name).To(Equal("John Doe"))

		claims, err := tokens.Verify(signedIn.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.Subject).To(Equal(registered.ID))
		Expect(claims.Audience).To(Equal(auth.TokenAudience))
	})

	It("refuses a second registration of the same username", func() {
		_, err := svc.Register(ctx, registration())
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Register(ctx, registration())
		Expect(auth.KindOf(err)).To(Equal(auth.KindAlreadyExists))
	})

	It("changes the password for the token owner", func() {
		registered, err := svc.Register(ctx, registration())
		Expect(err).NotTo(HaveOccurred())

		err = svc.UpdatePassword(ctx, auth.ChangePasswordRequest{
			ProfileID:          registered.ID,
			OldPassword:        "123456789",
			Password:           "1122334455",
			PasswordRepetition: "1122334455",
		}, registered.Token)
		Expect(err).NotTo(HaveOccurred())

		email := "johndoe@company.com"
		_, err = svc.SignIn(ctx, auth.SignInRequest{Email: &email, Password: "123456789"})
		Expect(auth.KindOf(err)).To(Equal(auth.KindUnauthenticated))

		_, err = svc.SignIn(ctx, auth.SignInRequest{Email: &email, Password: "1122334455"})
		Expect(err).NotTo(HaveOccurred())
	})
})
