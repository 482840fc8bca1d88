package provider

import (
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/redshift"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/lunarway/redshift-dwh/internal/core/warehouse"
)

// EC2 does not publish its error codes as constants.
const (
	ec2GroupNotFound       = "InvalidGroup.NotFound"
	ec2GroupIdMalformed    = "InvalidGroupId.Malformed"
	ec2GroupDuplicate      = "InvalidGroup.Duplicate"
	ec2PermissionDuplicate = "InvalidPermission.Duplicate"
	ec2DependencyViolation = "DependencyViolation"
)

var errorKinds = map[string]warehouse.ErrorKind{
	iam.ErrCodeNoSuchEntityException:           warehouse.NotFound,
	redshift.ErrCodeClusterNotFoundFault:       warehouse.NotFound,
	s3.ErrCodeNoSuchBucket:                     warehouse.NotFound,
	ec2GroupNotFound:                           warehouse.NotFound,
	ec2GroupIdMalformed:                        warehouse.NotFound,
	iam.ErrCodeEntityAlreadyExistsException:    warehouse.AlreadyExists,
	redshift.ErrCodeClusterAlreadyExistsFault:  warehouse.AlreadyExists,
	ec2GroupDuplicate:                          warehouse.AlreadyExists,
	ec2PermissionDuplicate:                     warehouse.AlreadyExists,
	"AccessDenied":                             warehouse.PermissionDenied,
	"AccessDeniedException":                    warehouse.PermissionDenied,
	"UnauthorizedOperation":                    warehouse.PermissionDenied,
	"AuthFailure":                              warehouse.PermissionDenied,
	"InvalidClientTokenId":                     warehouse.PermissionDenied,
	"SignatureDoesNotMatch":                    warehouse.PermissionDenied,
	ec2DependencyViolation:                     warehouse.TransientFailure,
	redshift.ErrCodeInvalidClusterStateFault:   warehouse.TransientFailure,
	iam.ErrCodeConcurrentModificationException: warehouse.TransientFailure,
	iam.ErrCodeServiceFailureException:         warehouse.TransientFailure,
}

func Kind(err error) warehouse.ErrorKind {
	if err == nil {
		return warehouse.Unknown
	}
	awsErr, ok := err.(awserr.Error)
	if !ok {
		return warehouse.Unknown
	}
	if request.IsErrorThrottle(awsErr) {
		return warehouse.TransientFailure
	}
	if kind, ok := errorKinds[awsErr.Code()]; ok {
		return kind
	}
	if request.IsErrorRetryable(awsErr) {
		return warehouse.TransientFailure
	}
	return warehouse.Unknown
}

// Classify turns an error returned by the AWS SDK into a warehouse.ResourceError.
func Classify(err error, resource string, name string) error {
	if err == nil {
		return nil
	}
	return warehouse.NewResourceError(Kind(err), resource, name, err)
}
