package pathref

import (
	"net/url"
	"strings"
)

const driveFilesEndpoint = "https://www.googleapis.com/drive/v3/files/"

// IsGoogleDrive reports whether u points at a Google Drive item, either as a
// sharing link or as a Drive API URL.
func IsGoogleDrive(u string) bool {
	return strings.Contains(u, "drive.google.com") || strings.Contains(u, "www.googleapis.com/drive")
}

// DriveFileID extracts the Drive file id from the link formats Drive hands
// out:
//
//	https://drive.google.com/open?id=<id>
//	https://drive.google.com/file/d/<id>/view?usp=sharing
//	https://www.googleapis.com/drive/v3/files/<id>?alt=media
//
// It returns "" for anything else.
func DriveFileID(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}

	if id := u.Query().Get("id"); id != "" {
		return id
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, segment := range segments {
		if i+1 >= len(segments) {
			break
		}
		if (segment == "d" && i > 0 && segments[i-1] == "file") || segment == "files" {
			return segments[i+1]
		}
	}

	return ""
}

// DriveDownloadURL converts a Drive link into a direct media download URL. Links
// without a recognizable file id are returned unchanged.
func DriveDownloadURL(link string) string {
	id := DriveFileID(link)
	if id == "" {
		return link
	}

	return driveFilesEndpoint + id + "?alt=media&supportsTeamDrives=true"
}
