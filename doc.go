// Copyright 2026 affiliate-dashboard. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package accounts-sync copies the affiliate account list maintained in a Google Sheets worksheet to a
Supabase table.

accounts-sync can be used from the command line but can also be run from a cron job to keep the
Supabase table in step with the worksheet. Rows are upserted, so rerunning a migration against an
unchanged worksheet does not create duplicates.

accounts-sync supports the following commands:

  - migrate, to fetch the accounts from the worksheet (or its Apps Script endpoint) and upsert them to Supabase
  - check, to verify the Supabase connection by retrieving and displaying the table contents
  - get, to download the accounts to a local JSON or TSV file
  - put, to upsert the accounts in a local JSON file to Supabase
  - version, to display the current version
*/
package accounts
