// Package hckerala scrapes the Kerala High Court case status portal.
//
// The portal is a set of session-dependent HTML forms:
//
//   - Statuscasetype: landing page with the case type selector
//   - Stausbycasetype: POST case_type, case_year; lists matching cases
//   - Viewcasestatus: POST cino, case_no; case details and document buttons
//   - fileview / fileviewcitation: viewer pages embedding one PDF object
//
// Request shapes and URL formats must match the portal exactly, including
// the literal "+&" separators in viewer URLs. All requests go through one
// Client so the session cookie is shared and the rate limit is global.
package hckerala
