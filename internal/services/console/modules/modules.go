// Package modules lists the feature modules the console composes.
package modules

import module "github.com/myhome/console/internal/services/console/module"

// Dependencies aliases the shared module dependencies type.
type Dependencies = module.Dependencies

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module
