// Package phone normalizes and validates caller phone numbers.
//
// The clinic serves Greek patients, so normalization targets E.164
// numbers with the +30 country code: mobile numbers starting with 6
// and landlines starting with 2, ten digits each.
package phone
