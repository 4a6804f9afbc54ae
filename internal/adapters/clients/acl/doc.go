// Package acl keeps the collection API's wire format out of the domain.
//
// [ArticClient] decodes search results into unexported DTOs and
// translates them into [domain.Candidate] values. Downstream failures are
// mapped to domain errors by [MapHTTPError]:
//
//   - 404 becomes [domain.ErrNotFound]
//   - 400 and 422 become [domain.ErrValidation]
//   - 401 and 403 become [domain.ErrForbidden]
//   - 429, 5xx and transport failures become [domain.ErrUnavailable]
//
// An open circuit or exhausted retries from the clients package are also
// reported as [domain.ErrUnavailable].
package acl
