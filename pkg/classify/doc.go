// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package classify sorts the files of a single directory into per-extension buckets.

A run scans the direct children of an origin directory, derives a key from each
file name and copies or moves the file into <destination>/<key>/:

	origin/
	  report.PDF        ->  destination/pdf/report.PDF
	  archive.tar.gz    ->  destination/gz/archive.tar.gz
	  a.txt, b.txt      ->  destination/txt/{a,b}.txt
	  noext             (never scanned)

# 🔑 Keys

The key is the trailing run of ASCII letters and digits in the file name,
lowercased. Names without a dot, and hidden names, are not scanned at all. A
scanned name whose trailing run is empty (for example "notes.") is skipped.

# 🚚 Transfers

Two modes exist, [ModeCopy] and [ModeMove]. Each resolves to a [Transferer]:

	tr := classify.ModeMove.Transferer()

Copies are written to a temporary file inside the bucket and renamed into
place. Moves use rename and fall back to copy-and-remove across devices.

When the bucket already holds a file with the same name, the [ConflictPolicy]
decides: overwrite it (default), skip the source, or fail the file.

# 📋 Results

Every scanned file produces one [Outcome]. Failures never stop the run; they are
tagged with an [ErrorKind] and reported to the [Observer]:

	res, err := classify.Classify(ctx, classify.Options{
		Origin:      "/home/me/Downloads",
		Destination: "/home/me/Downloads/classifier",
		Mode:        classify.ModeCopy,
		Observer:    logger,
	})
	if err != nil {
		// only a destination root that cannot be created ends up here
	}
	fmt.Println(res.Summary()) // "4/5"

The only error Classify returns is a [*DirectoryCreateError] for the
destination root, or the context error when the run is cancelled.
*/
package classify
