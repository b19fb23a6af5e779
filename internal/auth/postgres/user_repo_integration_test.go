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

var _ = Describe("UserRepository", func() {
	var (
		ctx  context.Context
		repo *postgres.UserRepository
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = postgres.NewUserRepository(env.pool)
		truncate(ctx)
	})

	Describe("Store and FindBy", func() {
		BeforeEach(func() {
			Expect(repo.Store(ctx, testNewUser())).To(Succeed())
		})

		want := &auth.CredentialRecord{ID: testID, Name: testName, Username: testUsername, PasswordHash: testHash}

		DescribeTable("finds the stored record",
			func(key auth.LookupKey) {
				got, err := repo.FindBy(ctx, key)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want))
			},
			Entry("by id", auth.ByID(testID)),
			Entry("by username", auth.ByUsername(testUsername)),
			Entry("by email", auth.ByEmail("johndoe@company.com")),
			Entry("by telephone", auth.ByTelephone("+1 415 237 0800")),
		)

		It("reports an unknown profile as not found", func() {
			_, err := repo.FindBy(ctx, auth.ByID("3d59b3cc-4ba4-09a4-90cb-956c4a2df911"))
			Expect(auth.KindOf(err)).To(Equal(auth.KindNotFound))
			Expect(err).To(MatchError(auth.ErrNotFound))
		})

		It("rejects a duplicate username and keeps the first record", func() {
			dup := testNewUser()
			dup.ID = "0f6f5a52-7a1e-4f0e-9a6e-1d2f3c4b5a69"
			dup.Email = "other@company.com"
			dup.Telephone = nil
			dup.Password = "$2a$08$otherhash"

			err := repo.Store(ctx, dup)
			Expect(auth.KindOf(err)).To(Equal(auth.KindAlreadyExists))

			got, err := repo.FindBy(ctx, auth.ByUsername(testUsername))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))

			_, err = repo.FindBy(ctx, auth.ByID(string(dup.ID)))
			Expect(auth.KindOf(err)).To(Equal(auth.KindNotFound))
		})

		It("rejects an unknown city as a database error", func() {
			u := testNewUser()
			u.ID = "0f6f5a52-7a1e-4f0e-9a6e-1d2f3c4b5a69"
			u.Username = "jane.doe"
			u.Email = "jane@company.com"
			u.Telephone = nil
			u.CityID = 999

			err := repo.Store(ctx, u)
			Expect(auth.KindOf(err)).To(Equal(auth.KindDatabaseError))
		})
	})

	Describe("UpdatePassword", func() {
		BeforeEach(func() {
			Expect(repo.Store(ctx, testNewUser())).To(Succeed())
		})

		It("replaces the stored hash", func() {
			Expect(repo.UpdatePassword(ctx, testID, "$2a$08$newhash")).To(Succeed())

			got, err := repo.FindBy(ctx, auth.ByID(testID))
			Expect(err).NotTo(HaveOccurred())
			Expect(got.PasswordHash).To(Equal("$2a$08$newhash"))
		})

		It("reports a missing profile as invalid argument", func() {
			err := repo.UpdatePassword(ctx, "3d59b3cc-4ba4-09a4-90cb-956c4a2df911", "$2a$08$newhash")
			Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidArgument))
			Expect(err).To(MatchError("wrong old password or user does not exist"))
		})
	})
})
