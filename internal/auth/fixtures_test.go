// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth_test

import (
	"time"

	"github.com/authd/authd/internal/auth"
)

const (
	testID            = "cc3b95d3-4ba4-4a90-bc09-119fd2a4c659"
	testName          = "John Doe"
	testUsername      = "john.doe"
	testBirthDate     = "1990-01-01"
	testGenderID      = 1
	testPassword      = "123456789"
	testStreet        = "153 W 57th St"
	testNeighborhood  = "manhattan"
	testCityID        = 4
	testPostalCode    = 10019
	testEmail         = "johndoe@company.com"
	testTelephone     = "+1 4152370800"
	testWrongPassword = "987654321"
	testNewPassword   = "1122334455"
	testHash          = "$2a$08$storedhashstoredhashstoredhashstoredhashstoredhash"
	testNewHash       = "$2a$08$newhashnewhashnewhashnewhashnewhashnewhashnewhash"
	testToken         = "header.payload.signature"
)

func ptr[T any](v T) *T { return &v }

func testRecord() *auth.CredentialRecord {
	return &auth.CredentialRecord{
		ID:           testID,
		Name:         testName,
		Username:     testUsername,
		PasswordHash: testHash,
	}
}

func testRegistrationRequest() auth.RegistrationRequest {
	return auth.RegistrationRequest{
		Name:                testName,
		Username:            testUsername,
		BirthDate:           testBirthDate,
		GenderID:            testGenderID,
		Password:            testPassword,
		PasswordRepetition:  testPassword,
		AddressStreet:       testStreet,
		AddressNeighborhood: testNeighborhood,
		AddressCityID:       testCityID,
		AddressPostalCode:   testPostalCode,
		Email:               testEmail,
		Telephone:           ptr(testTelephone),
	}
}

func testRegistrationDraft() auth.Registration[auth.NoID, auth.PlainPassword] {
	return auth.Registration[auth.NoID, auth.PlainPassword]{
		Name:         testName,
		Username:     testUsername,
		BirthDate:    time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		GenderID:     testGenderID,
		Password:     testPassword,
		Street:       testStreet,
		Neighborhood: testNeighborhood,
		CityID:       testCityID,
		PostalCode:   testPostalCode,
		Email:        testEmail,
		Telephone:    ptr(testTelephone),
	}
}

func testChangePasswordRequest() auth.ChangePasswordRequest {
	return auth.ChangePasswordRequest{
		ProfileID:          testID,
		OldPassword:        testPassword,
		Password:           testNewPassword,
		PasswordRepetition: testNewPassword,
	}
}
