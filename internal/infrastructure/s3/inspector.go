package s3

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/provider"
	log "github.com/sirupsen/logrus"
)

// Inspector checks that the raw data a COPY points at is actually there.
type Inspector struct {
	api s3iface.S3API
}

// NewInspector reads from region, which is where the source buckets live and not
// necessarily where the cluster runs.
func NewInspector(session *session.Session, region string) *Inspector {
	return NewInspectorWithAPI(s3.New(session, aws.NewConfig().WithRegion(region)))
}

func NewInspectorWithAPI(api s3iface.S3API) *Inspector {
	return &Inspector{api: api}
}

func ParseLocation(location string) (bucket string, prefix string, err error) {
	trimmed := strings.TrimPrefix(location, "s3://")
	if trimmed == location {
		return "", "", fmt.Errorf("%s is not an s3:// location", location)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("%s does not name a bucket", location)
	}
	if len(parts) == 2 {
		prefix = parts[1]
	}
	return parts[0], prefix, nil
}

// CountObjects counts the objects below an s3://bucket/prefix location. A
// jsonpaths file is a single object, so its key works as a prefix too.
func (i *Inspector) CountObjects(ctx context.Context, location string) (int64, error) {
	bucket, prefix, err := ParseLocation(location)
	if err != nil {
		return 0, err
	}

	var count int64
	err = i.api.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		count += int64(len(page.Contents))
		return true
	})

	if err != nil {
		return 0, provider.Classify(err, "bucket", bucket)
	}

	log.Debugf("found %d objects below %s", count, location)

	return count, nil
}
